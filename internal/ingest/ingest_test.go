package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `
<html>
	<head><title>Acme Careers</title></head>
	<body>
		<nav>Navigation</nav>
		<h1>Senior Backend Engineer</h1>
		<div class="job-description">
			<p>We are looking for a senior Go engineer.</p>
			<p>5+ years of experience with PostgreSQL required.</p>
		</div>
		<footer>Footer</footer>
	</body>
</html>`

func TestFetchPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	posting, err := FetchPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, posting.URL)
	assert.Equal(t, "Senior Backend Engineer", posting.Title)
	assert.Contains(t, posting.Description, "senior Go engineer")
	assert.NotContains(t, posting.Description, "Navigation")
	assert.NotContains(t, posting.Description, "Footer")
}

func TestFetchPosting_InvalidURL(t *testing.T) {
	_, err := FetchPosting(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var ingErr *Error
	assert.ErrorAs(t, err, &ingErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestFetchPosting_UnsupportedScheme(t *testing.T) {
	_, err := FetchPosting(context.Background(), "file:///etc/passwd", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestFetchPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchPosting(context.Background(), server.URL, nil)
	require.Error(t, err)

	var ingErr *Error
	assert.ErrorAs(t, err, &ingErr)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchPosting_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app.render()</script></body></html>`))
	}))
	defer server.Close()

	_, err := FetchPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable job description")
}

func TestParsePosting_SelectorPriority(t *testing.T) {
	html := `
	<html>
		<body>
			<main>Generic main content</main>
			<div class="job-description">Specific description</div>
		</body>
	</html>`

	posting, err := ParsePosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Specific description", posting.Description)
}

func TestParsePosting_BodyFallback(t *testing.T) {
	html := `<html><body><p>Plain page text</p></body></html>`

	posting, err := ParsePosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Plain page text", posting.Description)
}

func TestParsePosting_TitleFallback(t *testing.T) {
	html := `<html><head><title>Fallback Title</title></head><body><p>x</p></body></html>`

	posting, err := ParsePosting(html)
	require.NoError(t, err)
	assert.Equal(t, "Fallback Title", posting.Title)
}

func TestParsePosting_NoiseRemoved(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="cookie-banner">Accept cookies</div>
			<main>Role details here</main>
			<div class="ads">Buy things</div>
		</body>
	</html>`

	posting, err := ParsePosting(html)
	require.NoError(t, err)
	assert.Contains(t, posting.Description, "Role details")
	assert.NotContains(t, posting.Description, "cookies")
	assert.NotContains(t, posting.Description, "Buy things")
}
