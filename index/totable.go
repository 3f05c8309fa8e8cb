package index

// Table packages one or more named Index columns under a stable identity.
type Table struct {
	ID      TableID
	Columns []*Index
}

// ToTable packages columns under a freshly minted identity.
func ToTable(columns ...*Index) *Table {
	return &Table{ID: NewTableID(), Columns: columns}
}

// ColumnNamed returns the first column with the given name, nil if none.
func (t *Table) ColumnNamed(name string) *Index {
	for _, c := range t.Columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
