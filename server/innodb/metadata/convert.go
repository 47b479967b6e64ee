package metadata

import (
	"fmt"
	// "strings"
)

// ConvertTable converts a Table to a TableMeta
func ConvertTable(oldTable *Table) (*TableMeta, error) {
	// TODO: Implement proper table conversion when interfaces are stable
	return nil, fmt.Errorf("table conversion not implemented yet")
}

// ConvertSchema converts a Schema to a DatabaseSchema
func ConvertSchema(oldSchema Schema) (*DatabaseSchema, error) {
	if oldSchema == nil {
		return nil, fmt.Errorf("schema is nil")
	}

	databaseSchema := &DatabaseSchema{
		Name:    oldSchema.GetName(),
		Charset: oldSchema.GetCharset(),
		Tables:  make(map[string]*Table),
	}

	// TODO: Convert tables when proper interfaces are available
	// for _, oldTable := range oldSchema.GetTables() {
	//     table, err := ConvertTable(oldTable)
	//     if err != nil {
	//         return nil, fmt.Errorf("failed to convert table %s: %w", oldTable.GetName(), err)
	//     }
	//     databaseSchema.Tables[table.Name] = table
	// }

	return databaseSchema, nil
}

/*
// Commented out functions that have dependency issues

func convertColumn(oldCol schemas.ColumnMeta) (*Column, error) {
	// Implementation commented out due to missing schemas package
	return nil, fmt.Errorf("not implemented")
}

func convertIndex(oldIdx schemas.Index, table *TableMeta) (*Index, error) {
	// Implementation commented out due to missing schemas package
	return nil, fmt.Errorf("not implemented")
}

func convertDataType(oldType string) (DataType, error) {
	// Implementation commented out due to missing type definitions
	return "", fmt.Errorf("not implemented")
}
*/
