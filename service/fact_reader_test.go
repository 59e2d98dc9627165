package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/mockscn/domain"
)

const sampleFactJSON = `{
  "mocks": [
    {
      "variable_name": "repo",
      "declared_type": "UserRepo",
      "mocked_class": "UserRepo",
      "namespace": "com.example",
      "class_name": "UserServiceTest",
      "statements": [
        {"line": 12, "raw_text": "@Mock UserRepo repo;", "kind": "field_declaration", "method_name": "FieldDeclaration", "mock_related": true},
        {"line": 20, "raw_text": "when(repo.find(1L)).thenReturn(u);", "kind": "STUBBING", "method_name": "testFind", "abstracted": "UserRepo.find(long)", "mock_related": true}
      ]
    }
  ]
}`

const sampleFactYAML = `- variable_name: mailer
  mocked_class: Mailer
  namespace: com.example
  file_path: MailerTest.java
  class_name: MailerTest
  statements:
    - line: 7
      raw_text: "Mailer mailer = mock(Mailer.class);"
      kind: declaration
      method_name: testSend
      mock_related: true
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFactReader_ReadFactFile(t *testing.T) {
	reader := NewFactReader()
	dir := t.TempDir()

	t.Run("JSON document with mocks key", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "user.mocks.json"), sampleFactJSON)

		entities, err := reader.ReadFactFile(path)
		require.NoError(t, err)
		require.Len(t, entities, 1)

		e := entities[0]
		assert.Equal(t, "repo", e.VariableName)
		assert.Equal(t, path, e.FilePath, "missing file_path falls back to the document path")
		require.Len(t, e.Statements, 2)
		assert.Equal(t, domain.StatementKindFieldDeclaration, e.Statements[0].Kind)
		assert.Equal(t, "UserRepo.find(long)", e.Statements[1].Abstracted)
	})

	t.Run("JSON list", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "list.mocks.json"), `[{"variable_name": "a", "mocked_class": "A"}]`)

		entities, err := reader.ReadFactFile(path)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "A", entities[0].MockedClass)
	})

	t.Run("YAML list", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "mailer.mocks.yaml"), sampleFactYAML)

		entities, err := reader.ReadFactFile(path)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "MailerTest.java", entities[0].FilePath)
		assert.Equal(t, domain.StatementKindLocalDeclaration, entities[0].Statements[0].Kind)
	})

	t.Run("YAML mapping", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "doc.mocks.yml"), "mocks:\n  - variable_name: b\n    mocked_class: B\n")

		entities, err := reader.ReadFactFile(path)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "B", entities[0].MockedClass)
	})

	t.Run("Empty documents", func(t *testing.T) {
		for _, name := range []string{"empty.mocks.json", "empty.mocks.yaml"} {
			path := writeFile(t, filepath.Join(dir, name), "")
			entities, err := reader.ReadFactFile(path)
			require.NoError(t, err)
			assert.Empty(t, entities)
		}
	})

	t.Run("Scalar YAML is rejected", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "scalar.mocks.yaml"), "just text\n")

		_, err := reader.ReadFactFile(path)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
	})

	t.Run("Broken JSON", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "broken.mocks.json"), `{"mocks": [`)

		_, err := reader.ReadFactFile(path)
		assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := reader.ReadFactFile(filepath.Join(dir, "missing.mocks.json"))
		assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "facts.txt"), "[]")

		_, err := reader.ReadFactFile(path)
		assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
	})
}

func TestFactReader_CollectFactFiles(t *testing.T) {
	reader := NewFactReader()
	dir := t.TempDir()

	a := writeFile(t, filepath.Join(dir, "a.mocks.json"), "[]")
	b := writeFile(t, filepath.Join(dir, "nested", "b.mocks.yaml"), "[]")
	writeFile(t, filepath.Join(dir, "nested", "notes.json"), "{}")
	writeFile(t, filepath.Join(dir, ".hidden", "c.mocks.json"), "[]")
	writeFile(t, filepath.Join(dir, "build", "d.mocks.json"), "[]")
	generated := writeFile(t, filepath.Join(dir, "generated", "e.mocks.json"), "[]")

	include := domain.DefaultFactIncludePatterns()

	t.Run("Recursive walk applies include patterns and skips hidden and build dirs", func(t *testing.T) {
		files, err := reader.CollectFactFiles([]string{dir}, true, include, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b, generated}, files)
	})

	t.Run("Exclude patterns", func(t *testing.T) {
		files, err := reader.CollectFactFiles([]string{dir}, true, include, []string{"generated/**"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b}, files)
	})

	t.Run("Non-recursive", func(t *testing.T) {
		files, err := reader.CollectFactFiles([]string{dir}, false, include, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, files)
	})

	t.Run("Explicit files bypass include patterns and are deduplicated", func(t *testing.T) {
		notes := filepath.Join(dir, "nested", "notes.json")
		files, err := reader.CollectFactFiles([]string{notes, a, a}, true, include, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{notes, a}, files)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := reader.CollectFactFiles([]string{filepath.Join(dir, "nope")}, true, include, nil)
		assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	})
}

func TestFactReader_IsFactFile(t *testing.T) {
	reader := NewFactReader()

	assert.True(t, reader.IsFactFile("a.mocks.json"))
	assert.True(t, reader.IsFactFile("a.YAML"))
	assert.True(t, reader.IsFactFile("a.yml"))
	assert.False(t, reader.IsFactFile("a.java"))
}

func TestFactReader_ValidatePaths(t *testing.T) {
	reader := NewFactReader()
	dir := t.TempDir()

	assert.NoError(t, reader.ValidatePaths([]string{dir}))
	assert.Error(t, reader.ValidatePaths([]string{filepath.Join(dir, "missing")}))
}
