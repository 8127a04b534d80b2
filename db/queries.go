package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Run queries

//go:embed sql/insert_run.sql
var InsertRunSQL string

//go:embed sql/mark_run_complete.sql
var MarkRunCompleteSQL string

//go:embed sql/mark_run_error.sql
var MarkRunErrorSQL string

//go:embed sql/select_runs.sql
var SelectRunsSQL string

//go:embed sql/select_run_by_id.sql
var SelectRunByIDSQL string

//go:embed sql/delete_runs_before.sql
var DeleteRunsBeforeSQL string
