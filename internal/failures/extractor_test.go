package failures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParenthesizedForm(t *testing.T) {
	doc := []byte(`{
		"testResults": [{
			"assertionResults": [{
				"failureMessages": [
					"Error: expect(received).toBe(expected)\n    at Object.<anonymous> (/repo/src/a.js:3:5)"
				]
			}]
		}]
	}`)

	locations := Extract(doc, "/repo")

	require.Len(t, locations, 1)
	assert.Contains(t, locations["src/a.js"], 3)
}

func TestExtractStackFrameForm(t *testing.T) {
	doc := []byte(`{
		"testResults": [{
			"assertionResults": [{
				"failureMessages": ["at processTicksAndRejections /repo/src/b.js:12:9"]
			}]
		}]
	}`)

	locations := Extract(doc, "/repo")

	require.Len(t, locations, 1)
	assert.Contains(t, locations["src/b.js"], 12)
}

func TestExtractTopLevelAndSuiteMessages(t *testing.T) {
	doc := []byte(`{
		"message": "suite crashed (/repo/src/boot.js:1:1)",
		"testResults": [{
			"message": "beforeAll failed (/repo/src/setup.js:7:3)",
			"assertionResults": []
		}]
	}`)

	locations := Extract(doc, "/repo")

	assert.Contains(t, locations["src/boot.js"], 1)
	assert.Contains(t, locations["src/setup.js"], 7)
}

func TestExtractDuplicatesCollapse(t *testing.T) {
	doc := []byte(`{
		"testResults": [{
			"assertionResults": [
				{"failureMessages": ["(/repo/src/a.js:3:5)", "(/repo/src/a.js:3:9)"]},
				{"failureMessages": ["(/repo/src/a.js:3:1)"]}
			]
		}]
	}`)

	locations := Extract(doc, "/repo")

	require.Len(t, locations, 1)
	assert.Len(t, locations["src/a.js"], 1)
}

func TestExtractMalformedDocument(t *testing.T) {
	assert.Empty(t, Extract([]byte("{not json"), "/repo"))
	assert.Empty(t, Extract(nil, "/repo"))
}

func TestExtractNoRecognizedShape(t *testing.T) {
	doc := []byte(`{
		"testResults": [{
			"assertionResults": [{
				"failureMessages": ["Exception in thread main at com.example.Main.run(Main.java)"]
			}]
		}]
	}`)

	assert.Empty(t, Extract(doc, "/repo"))
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jest-results.json")
	doc := `{"testResults":[{"assertionResults":[{"failureMessages":["(/repo/src/a.js:3:5)"]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	locations := ExtractFile(path, "/repo")
	assert.Contains(t, locations["src/a.js"], 3)
}

func TestExtractFileAbsent(t *testing.T) {
	assert.Empty(t, ExtractFile(filepath.Join(t.TempDir(), "nope.json"), "/repo"))
	assert.Empty(t, ExtractFile("", "/repo"))
}
