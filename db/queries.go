package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Render history queries

//go:embed sql/insert_render.sql
var InsertRenderSQL string

//go:embed sql/mark_render_complete.sql
var MarkRenderCompleteSQL string

//go:embed sql/mark_render_error.sql
var MarkRenderErrorSQL string

//go:embed sql/select_renders.sql
var SelectRendersSQL string
