package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
formats:
  - name: staff
    permission: chat.format.staff
    format: "&c[{server}] {display_name}&7: &f{message}"
  - name: donor
    when: group == "donor"
    format: "&6[{server}] {username}&7: &f{message}"
  - name: default
    format: "[{server}] {username}: {message}"
require-permission: false
`

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, cfg.Formats, 3)
	assert.Equal(t, "staff", cfg.Formats[0].Name)
	assert.Equal(t, "chat.format.staff", cfg.Formats[0].Permission)
	assert.Equal(t, `group == "donor"`, cfg.Formats[1].When)
	assert.Equal(t, "default", cfg.Formats[2].Name)
	assert.Empty(t, cfg.Formats[2].Permission)
	assert.False(t, cfg.RequirePermission)
}

func TestFromYAML_OrderPreserved(t *testing.T) {
	cfg, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	names := make([]string, len(cfg.Formats))
	for i, f := range cfg.Formats {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"staff", "donor", "default"}, names)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("formats: {not: a list}"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{"formats":[{"name":"default","format":"{username}: {message}"}]}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	require.Len(t, cfg.Formats, 1)
	assert.Equal(t, "default", cfg.Formats[0].Name)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "chat.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Formats, 3)
}

func TestFromFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

		_, err := FromFile(path)
		assert.ErrorContains(t, err, "unsupported config file extension")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "valid",
			cfg:     Config{Formats: []FormatSpec{{Name: "a", Format: "{message}"}}},
			wantErr: "",
		},
		{
			name:    "empty list is valid",
			cfg:     Config{},
			wantErr: "",
		},
		{
			name:    "missing name",
			cfg:     Config{Formats: []FormatSpec{{Format: "{message}"}}},
			wantErr: "missing name",
		},
		{
			name:    "missing template",
			cfg:     Config{Formats: []FormatSpec{{Name: "a"}}},
			wantErr: "missing format template",
		},
		{
			name: "duplicate name",
			cfg: Config{Formats: []FormatSpec{
				{Name: "a", Format: "x"},
				{Name: "a", Format: "y"},
			}},
			wantErr: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
