package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Hydratační sérum</title></head>
<body>
<nav><a href="/">Domů</a> <a href="/kosik">Košík</a></nav>
<main>
<article>
<h1>Hydratační sérum</h1>
<p>Lehké sérum s kyselinou hyaluronovou pro každodenní péči o suchou a citlivou pleť.
Sérum se rychle vstřebává, nezanechává mastný film a pleť zůstává hydratovaná po celý den.</p>
<p>Naneste dvě až tři kapky na vyčištěnou pleť ráno i večer a jemně vmasírujte do pokožky.
Poté můžete pokračovat krémem. Vhodné i pod make-up a pro citlivou pleť kolem očí.</p>
<p><strong>Obsah:</strong> 30 ml</p>
</article>
</main>
<footer>© Krása na míru</footer>
</body>
</html>`

func TestMarkdown(t *testing.T) {
	md, err := Markdown(articlePage, "https://www.krasanamiru.cz/produkt/hydratacni-serum/")
	require.NoError(t, err)

	assert.Contains(t, md, "Lehké sérum s kyselinou hyaluronovou")
	assert.Contains(t, md, "Naneste dvě až tři kapky")
	assert.NotContains(t, md, "<p>")
	assert.False(t, strings.HasPrefix(md, "\n"))
}

func TestMainContentHTML_FallsBackToPage(t *testing.T) {
	page := `<html><body></body></html>`
	assert.Equal(t, page, MainContentHTML(page, "://bad url"))
}
