package judge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHandleFlatToken(t *testing.T) {
	handle := parseHandle([]byte(`{"token":"abc-123"}`))
	require.Equal(t, "abc-123", handle.Token)
	require.Nil(t, handle.Result)
	require.Empty(t, handle.Raw)
}

func TestParseHandleNestedToken(t *testing.T) {
	handle := parseHandle([]byte(`{"result":{"token":"nested-456"}}`))
	require.Equal(t, "nested-456", handle.Token)
	require.Nil(t, handle.Result)
}

func TestParseHandleEmbeddedResult(t *testing.T) {
	handle := parseHandle([]byte(`{"result":{"stdout":"hi","status_id":3}}`))
	require.Empty(t, handle.Token)
	require.NotNil(t, handle.Result)
	require.Equal(t, "hi", handle.Result.Stdout)
	require.NotNil(t, handle.Result.StatusID)
	require.Equal(t, 3, *handle.Result.StatusID)
}

func TestParseHandleBareResultObject(t *testing.T) {
	handle := parseHandle([]byte(`{"stdout":"direct","stderr":"oops"}`))
	require.Empty(t, handle.Token)
	require.NotNil(t, handle.Result)
	require.Equal(t, "direct", handle.Result.Stdout)
	require.Equal(t, "oops", handle.Result.Stderr)
}

func TestParseHandleOpaqueBody(t *testing.T) {
	handle := parseHandle([]byte("Service Unavailable"))
	require.Empty(t, handle.Token)
	require.Nil(t, handle.Result)
	require.Equal(t, "Service Unavailable", handle.Raw)
}

func TestParseResultOptionalFields(t *testing.T) {
	result, err := parseResult([]byte(`{"stdout":"x","done":false,"status":{"id":1,"description":"In Queue"}}`))
	require.NoError(t, err)
	require.Equal(t, "x", result.Stdout)
	require.NotNil(t, result.Done)
	require.False(t, *result.Done)
	require.NotNil(t, result.StatusID)
	require.Equal(t, 1, *result.StatusID)
	require.Equal(t, "In Queue", result.StatusDescription)
}

func TestParseResultFlatStatusFields(t *testing.T) {
	result, err := parseResult([]byte(`{"status_id":"4","status_description":"Wrong Answer"}`))
	require.NoError(t, err)
	require.NotNil(t, result.StatusID)
	require.Equal(t, 4, *result.StatusID)
	require.Equal(t, "Wrong Answer", result.StatusDescription)
	require.Nil(t, result.Done)
}

func TestParseResultMalformed(t *testing.T) {
	_, err := parseResult([]byte("<html>bad gateway</html>"))
	require.Error(t, err)

	_, err = parseResult([]byte(`[1,2,3]`))
	require.Error(t, err)
}

func TestParseLanguagesIDPrecedence(t *testing.T) {
	languages, err := parseLanguages([]byte(`[{"id":7,"language_id":99,"name":"Go"}]`))
	require.NoError(t, err)
	require.Len(t, languages, 1)
	require.Equal(t, 7, languages[0].ID)
	require.Equal(t, "Go", languages[0].Name)
}

func TestParseLanguagesAlternateFields(t *testing.T) {
	languages, err := parseLanguages([]byte(`[
		{"language_id":10,"language":"Python"},
		{"languageId":"11","name":"Ruby","version":"3.2"},
		{"name":"Mystery"}
	]`))
	require.NoError(t, err)
	require.Len(t, languages, 3)

	require.Equal(t, 10, languages[0].ID)
	require.Equal(t, "Python", languages[0].Name)

	require.Equal(t, 11, languages[1].ID)
	require.Equal(t, "3.2", languages[1].Version)

	require.Equal(t, -1, languages[2].ID)
	require.Equal(t, "Mystery", languages[2].Name)
}

func TestParseLanguagesWrappedObject(t *testing.T) {
	languages, err := parseLanguages([]byte(`{"languages":[{"id":1,"name":"C"}]}`))
	require.NoError(t, err)
	require.Len(t, languages, 1)
	require.Equal(t, "C", languages[0].Name)
}

func TestParseLanguagesMalformed(t *testing.T) {
	_, err := parseLanguages([]byte(`{"count":3}`))
	require.Error(t, err)
}
