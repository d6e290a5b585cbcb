package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid config",
			config:  Config{InputDir: "exports", DBPath: "export_data.db"},
			wantErr: nil,
		},
		{
			name:    "empty input dir",
			config:  Config{DBPath: "export_data.db"},
			wantErr: ErrInputDirEmpty,
		},
		{
			name:    "empty db path",
			config:  Config{InputDir: "exports"},
			wantErr: ErrDBPathEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParsedTableColumn(t *testing.T) {
	tbl := &ParsedTable{
		Headers: []string{"a", "b"},
		Rows: [][]string{
			{"1", "x"},
			{"2", ""},
			{"3", "z"},
		},
	}

	assert.Equal(t, []string{"1", "2", "3"}, tbl.Column(0))
	assert.Equal(t, []string{"x", "", "z"}, tbl.Column(1))
}

func TestColumnMappingSourceIndex(t *testing.T) {
	m := &ColumnMapping{
		Originals:    []string{"First Name", "Email!"},
		Normalized:   []string{"first_name", "email"},
		ToNormalized: map[string]string{"First Name": "first_name", "Email!": "email"},
		Index:        map[string]int{"first_name": 0, "email": 1},
	}

	i, ok := m.SourceIndex("email")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = m.SourceIndex("missing")
	assert.False(t, ok)
}
