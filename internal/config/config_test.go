package config

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/mpyw/hookdeps/internal/registry"
)

// equivalent holds the same configuration in every format.
var equivalent = txtar.Parse([]byte(`
-- .hookdeps.yaml --
hooks:
  - name: useCustomEffect
    closureIndex: 0
    dependenciesIndex: 1
  - name: useStore
    stableResult: [1]
  - name: useBox
    stableResult: true
reportUnnecessaryDependencies: false
-- .hookdeps.toml --
reportUnnecessaryDependencies = false

[[hooks]]
name = "useCustomEffect"
closureIndex = 0
dependenciesIndex = 1

[[hooks]]
name = "useStore"
stableResult = [1]

[[hooks]]
name = "useBox"
stableResult = true
-- .hookdeps.json --
{
  "hooks": [
    {"name": "useCustomEffect", "closureIndex": 0, "dependenciesIndex": 1},
    {"name": "useStore", "stableResult": [1]},
    {"name": "useBox", "stableResult": true}
  ],
  "reportUnnecessaryDependencies": false
}
`))

func TestParseFormats(t *testing.T) {
	want := []registry.Override{
		{Name: "useCustomEffect", ClosureIndex: 0, DependenciesIndex: 1},
		{Name: "useStore", ClosureIndex: registry.NoIndex, DependenciesIndex: registry.NoIndex, StableResult: registry.StableResult{Slots: []int{1}}},
		{Name: "useBox", ClosureIndex: registry.NoIndex, DependenciesIndex: registry.NoIndex, StableResult: registry.StableResult{Whole: true}},
	}

	for _, f := range equivalent.Files {
		t.Run(f.Name, func(t *testing.T) {
			format, err := FormatOf(f.Name)
			require.NoError(t, err)

			cfg, err := Parse(f.Data, format)
			require.NoError(t, err)

			assert.Equal(t, want, cfg.Overrides())
			assert.False(t, cfg.ReportUnnecessary())
		})
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse([]byte(""), YAML)
	require.NoError(t, err)

	assert.Empty(t, cfg.Overrides())
	assert.True(t, cfg.ReportUnnecessary())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantTag string
	}{
		{
			name:    "missing name",
			format:  YAML,
			data:    "hooks:\n  - closureIndex: 0\n",
			wantTag: "required",
		},
		{
			name:    "invalid name",
			format:  YAML,
			data:    "hooks:\n  - name: use-effect\n    closureIndex: 0\n",
			wantTag: "hookname",
		},
		{
			name:    "negative closure index",
			format:  JSON,
			data:    `{"hooks": [{"name": "useX", "closureIndex": -1}]}`,
			wantTag: "gte",
		},
		{
			name:    "negative stable slot",
			format:  TOML,
			data:    "[[hooks]]\nname = \"useX\"\nstableResult = [-1]\n",
			wantTag: "gte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.wantTag, verr.Fields[0].Tag)
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{name: "yaml unknown field", format: YAML, data: "hook: []\n"},
		{name: "yaml stable result string", format: YAML, data: "hooks:\n  - name: useX\n    stableResult: yes please\n"},
		{name: "toml unknown key", format: TOML, data: "extra = 1\n"},
		{name: "toml stable result string", format: TOML, data: "[[hooks]]\nname = \"useX\"\nstableResult = \"all\"\n"},
		{name: "json unknown field", format: JSON, data: `{"hook": []}`},
		{name: "json stable result object", format: JSON, data: `{"hooks": [{"name": "useX", "stableResult": {}}]}`},
		{name: "unknown format", format: Format("ini"), data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)

			var verr *ValidationError
			assert.NotErrorAs(t, err, &verr)
		})
	}
}

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]Format{
		"a.yaml":         YAML,
		"a.YML":          YAML,
		".hookdeps.toml": TOML,
		"dir/a.json":     JSON,
	} {
		got, err := FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatOf("a.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadAndDiscover(t *testing.T) {
	fs := memfs.New()

	_, err := Discover(fs, "project")
	require.ErrorIs(t, err, ErrNotFound)

	for _, f := range equivalent.Files {
		require.NoError(t, util.WriteFile(fs, fs.Join("project", f.Name), f.Data, 0o644))
	}

	name, err := Discover(fs, "project")
	require.NoError(t, err)
	assert.Equal(t, fs.Join("project", ".hookdeps.yaml"), name)

	cfg, err := Load(fs, name)
	require.NoError(t, err)
	assert.Len(t, cfg.Hooks, 3)

	require.NoError(t, fs.Remove(name))
	name, err = Discover(fs, "project")
	require.NoError(t, err)
	assert.Equal(t, fs.Join("project", ".hookdeps.toml"), name)

	_, err = Load(fs, "project/missing.yaml")
	assert.Error(t, err)
}

func TestOverridesBuildRegistry(t *testing.T) {
	cfg, err := Parse([]byte("hooks:\n  - name: useEffect\n    closureIndex: 0\n    dependenciesIndex: 1\n"), YAML)
	require.NoError(t, err)

	reg, err := registry.Build(cfg.Overrides())
	require.NoError(t, err)

	desc, ok := reg.Lookup("useEffect")
	require.True(t, ok)
	assert.False(t, desc.RequiresCanonicalImport)
	assert.Equal(t, 1, desc.DependenciesArgIndex)
}

func TestStableResultMarshalJSON(t *testing.T) {
	for _, tt := range []struct {
		in   StableResult
		want string
	}{
		{StableResult{Whole: true}, "true"},
		{StableResult{Slots: []int{0, 2}}, "[0,2]"},
		{StableResult{}, "[]"},
	} {
		got, err := tt.in.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}
