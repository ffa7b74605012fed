// Package model contains gorm models for recording data to database
package model

// MigrateAble is array of model instance, use for migrating database
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&User{},
		&Company{},
		&File{},
		&Job{},
		&Application{},
		&ApplicationNote{},
		&PipelineStage{},
		&Interview{},
	)
}
