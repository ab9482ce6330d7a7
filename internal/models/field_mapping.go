package models

// FieldMapping binds a GHL custom field to a local table column.
// GHLFieldID is the only stable join key; FieldKey is a cached label
// and can drift when a CRM admin renames the field.
type FieldMapping struct {
	ID         int    `json:"id"`
	GHLFieldID string `json:"ghl_field_id"`
	FieldKey   string `json:"field_key"`
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
	ValueType  string `json:"value_type"`
}
