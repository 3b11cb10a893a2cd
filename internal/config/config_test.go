package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseOutputMode(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    OutputMode
		wantErr bool
	}{
		{name: "opaque", in: "opaque", want: OutputOpaque},
		{name: "ast", in: "ast", want: OutputAST},
		{name: "unknown", in: "xml", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			got, err := ParseOutputMode(tc.in)
			if tc.wantErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.want, got)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{GrammarFile: "g.json"}
	filled := cfg.FillDefaults()

	assert.Equal("parser", filled.PackageName)
	assert.Equal(OutputOpaque, filled.Output)
	assert.Equal("g.json", filled.GrammarFile, "FillDefaults must not touch already-set fields")
}

func Test_Config_FillDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{GrammarFile: "g.json", PackageName: "ast", Output: OutputAST}
	filled := cfg.FillDefaults()

	assert.Equal("ast", filled.PackageName)
	assert.Equal(OutputAST, filled.Output)
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{GrammarFile: "g.json", PackageName: "parser", Output: OutputOpaque},
			wantErr: false,
		},
		{
			name:    "missing grammar file",
			cfg:     Config{PackageName: "parser", Output: OutputOpaque},
			wantErr: true,
		},
		{
			name:    "missing package name",
			cfg:     Config{GrammarFile: "g.json", Output: OutputOpaque},
			wantErr: true,
		},
		{
			name:    "unknown output mode",
			cfg:     Config{GrammarFile: "g.json", PackageName: "parser", Output: "xml"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Load_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "peggen.toml")
	contents := `
grammar_file = "grammar.json"
package_name = "myparser"
output_file = "parser.go"
output = "ast"
dump_ir = "ir.bin"
`
	assert.NoError(os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("grammar.json", cfg.GrammarFile)
	assert.Equal("myparser", cfg.PackageName)
	assert.Equal("parser.go", cfg.OutputFile)
	assert.Equal(OutputAST, cfg.Output)
	assert.Equal("ir.bin", cfg.DumpIR)
}

func Test_Load_MissingFileIsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

func Test_Load_InvalidTOMLIsError(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	assert.NoError(os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load(path)
	assert.Error(err)
}
