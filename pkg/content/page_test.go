package content

import "testing"

func TestExtractPageTranscript_JSONLD(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type": "PodcastEpisode", "transcript": "Hello from JSON-LD"}</script>
</head><body></body></html>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "Hello from JSON-LD" {
		t.Fatalf("ExtractPageTranscript = %q, want %q", got, "Hello from JSON-LD")
	}
}

func TestExtractPageTranscript_JSONLDBeatsContainer(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"transcript": "from json-ld"}</script>
</head><body>
<div class="transcript">from container</div>
</body></html>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "from json-ld" {
		t.Fatalf("ExtractPageTranscript = %q, want JSON-LD to win over container markup", got)
	}
}

func TestExtractPageTranscript_MalformedJSONLDFallsThrough(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{not valid json</script>
</head><body>
<div class="episode-transcript"><p>Spoken <b>words</b> here.</p></div>
</body></html>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "Spoken words here." {
		t.Fatalf("ExtractPageTranscript = %q, want markup-stripped container text", got)
	}
}

func TestExtractPageTranscript_DivContainer(t *testing.T) {
	html := `<html><body><div class="transcript">Hello World</div></body></html>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "Hello World" {
		t.Fatalf("ExtractPageTranscript = %q, want %q", got, "Hello World")
	}
}

func TestExtractPageTranscript_SectionByID(t *testing.T) {
	html := `<html><body>
<section id="transcript-panel">Line one
Line two</section>
</body></html>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "Line one Line two" {
		t.Fatalf("ExtractPageTranscript = %q, want whitespace-collapsed text", got)
	}
}

func TestExtractPageTranscript_DecodesEntities(t *testing.T) {
	html := `<div id="transcript">Q &amp; A &lt;live&gt;</div>`

	got, err := ExtractPageTranscript(html)
	if err != nil {
		t.Fatalf("ExtractPageTranscript returned error: %v", err)
	}
	if got != "Q & A <live>" {
		t.Fatalf("ExtractPageTranscript = %q, want decoded entities", got)
	}
}

func TestExtractPageTranscript_NoMatch(t *testing.T) {
	html := `<html><body><div class="show-notes">Nothing to see</div></body></html>`

	if _, err := ExtractPageTranscript(html); err == nil {
		t.Fatal("ExtractPageTranscript should fail when no transcript markup exists")
	}
}

func TestExtractPageTranscript_EmptyHTML(t *testing.T) {
	if _, err := ExtractPageTranscript("   "); err == nil {
		t.Fatal("ExtractPageTranscript should fail on empty HTML")
	}
}
