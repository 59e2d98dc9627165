package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildMockscnBinary builds the CLI into a temporary directory
func buildMockscnBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "mockscn")

	// Build from the project root (one level up from e2e directory)
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mockscn")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build mockscn binary: %v\n%s", err, output)
	}
	return binaryPath
}

// createTestConfigFile creates a .mockscn.toml that directs reports to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".mockscn.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = %q\n", outputDir)
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

func createFactFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create fact file %s: %v", filename, err)
	}
	return path
}

// stubbedFacts returns a fact document where every test stubs the same call
func stubbedFacts(class string, tests int) string {
	stmts := []string{fmt.Sprintf(
		`{"line": 3, "raw_text": "@Mock %s m;", "kind": "FIELD_DECLARATION", "method_name": "FieldDeclaration", "mock_related": true}`, class)}
	for i := 0; i < tests; i++ {
		stmts = append(stmts, fmt.Sprintf(
			`{"line": %d, "raw_text": "when(m.load(%d)).thenReturn(v);", "kind": "STUBBING", "method_name": "test%d", "abstracted": "%s.load(int)", "mock_related": true}`,
			10*(i+1), i, i, class))
	}
	return fmt.Sprintf(`{"mocks": [{"variable_name": "m", "declared_type": %q, "mocked_class": %q,
  "namespace": "com.example", "file_path": "%sTest.java", "class_name": "%sTest",
  "statements": [%s]}]}`, class, class, class, class, strings.Join(stmts, ",\n"))
}
