package resolver

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookbookASIN = "0618249060"

var groupAttributesBrowse = []string{client.ResponseGroupItemAttributes, client.ResponseGroupBrowseNodes}

func browseNodes(ancestors ...string) string {
	body := `<BrowseNodes><BrowseNode><BrowseNodeId>4</BrowseNodeId><Name>Leaf</Name><Ancestors>`
	for _, name := range ancestors {
		body += `<BrowseNode><BrowseNodeId>6</BrowseNodeId><Name>` + escapeXML(name) + `</Name></BrowseNode>`
	}
	return body + `</Ancestors></BrowseNode></BrowseNodes>`
}

func escapeXML(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}

func TestExtractAttributes(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.on(cookbookASIN, 0, document(`<Item>
		<ASIN>`+cookbookASIN+`</ASIN>
		<DetailPageURL>https://www.example.com/dp/0618249060</DetailPageURL>
		<ItemAttributes>
			<ListPrice><Amount>3500</Amount><CurrencyCode>USD</CurrencyCode><FormattedPrice>$35.00</FormattedPrice></ListPrice>
			<ProductGroup>Book</ProductGroup>
			<Title>Crème Brûlée`+" "+`Cookbook</Title>
		</ItemAttributes>
		`+browseNodes("Desserts", CookbookCategory)+`
	</Item>`), groupAttributesBrowse...)

	attrs, err := newTestResolver(catalog).ExtractAttributes(context.Background(), cookbookASIN)

	require.NoError(t, err)
	assert.Equal(t, domain.ItemAttributes{
		DetailPageURL:      "https://www.example.com/dp/0618249060",
		ListPriceAmount:    "3500",
		ListPriceFormatted: "$35.00",
		Title:              "Creme Brulee Cookbook",
		ProductGroup:       "Book",
		IsCookbook:         true,
	}, attrs)
}

func TestExtractAttributes_CookbookNeedsExactAncestor(t *testing.T) {
	tests := map[string]struct {
		nodes string
		want  bool
	}{
		"no browse nodes":   {"", false},
		"unrelated":         {browseNodes("Desserts", "Books"), false},
		"substring only":    {browseNodes("Vegan Cookbooks, Food & Wine Classics"), false},
		"among many":        {browseNodes("Subjects", CookbookCategory, "Books"), true},
		"leaf is not cause": {`<BrowseNodes><BrowseNode><Name>` + escapeXML(CookbookCategory) + `</Name></BrowseNode></BrowseNodes>`, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on(cookbookASIN, 0, document(`<Item><ASIN>`+cookbookASIN+`</ASIN>`+tt.nodes+`</Item>`), groupAttributesBrowse...)

			attrs, err := newTestResolver(catalog).ExtractAttributes(context.Background(), cookbookASIN)

			require.NoError(t, err)
			assert.Equal(t, tt.want, attrs.IsCookbook)
		})
	}
}

func TestExtractAttributes_Degrades(t *testing.T) {
	tests := map[string]string{
		"no item":       document(""),
		"error marker":  errorDocument(InvalidParameterCode),
		"no attributes": document(`<Item><ASIN>` + cookbookASIN + `</ASIN></Item>`),
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on(cookbookASIN, 0, body, groupAttributesBrowse...)

			attrs, err := newTestResolver(catalog).ExtractAttributes(context.Background(), cookbookASIN)

			require.NoError(t, err)
			assert.True(t, attrs.IsEmpty())
		})
	}
}

func TestExtractAttributes_RemoteError(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.fail(cookbookASIN, 0, &client.TransportError{StatusCode: http.StatusBadRequest, Status: "400"}, groupAttributesBrowse...)

	_, err := newTestResolver(catalog).ExtractAttributes(context.Background(), cookbookASIN)

	var remote *client.RemoteError
	assert.ErrorAs(t, err, &remote)
}

func TestASCIITitle(t *testing.T) {
	tests := map[string]string{
		"Plain Title":              "Plain Title",
		"Caf\u00e9":                "Cafe",
		"\ufb01sh":                 "fish",
		"Tab\tand\u200bwidth":      "Tabandwidth",
		"\u65e5\u672c\u6599\u7406": "",
		"Na\u00efve Gastronomy":    "Naive Gastronomy",
	}

	for in, want := range tests {
		assert.Equal(t, want, asciiTitle(in), in)
	}
}
