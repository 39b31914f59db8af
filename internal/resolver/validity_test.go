package resolver

import (
	"context"
	"net/http"
	"testing"

	"catalog/relations/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	tests := map[string]struct {
		body string
		want bool
	}{
		"item found":        {document(attributesItem("B00VALID01", "Toy")), true},
		"no item":           {document(""), true},
		"other error code":  {errorDocument("AWS.ECommerceService.NoExactMatches"), true},
		"invalid parameter": {errorDocument(InvalidParameterCode), false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.on("B00VALID01", 0, tt.body, groupAttributes)

			valid, err := newTestResolver(catalog).IsValidID(context.Background(), "B00VALID01")

			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}
}

func TestIsValidID_SecondErrorEntry(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.on("B00VALID01", 0, `<ItemLookupResponse xmlns="`+client.ServiceNamespace+`"><Items><Request><IsValid>True</IsValid><Errors>
		<Error><Code>AWS.ECommerceService.NoExactMatches</Code><Message>a</Message></Error>
		<Error><Code>`+InvalidParameterCode+`</Code><Message>b</Message></Error>
	</Errors></Request></Items></ItemLookupResponse>`, groupAttributes)

	valid, err := newTestResolver(catalog).IsValidID(context.Background(), "B00VALID01")

	require.NoError(t, err)
	assert.False(t, valid)
}

func TestIsValidID_TransportFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.fail("B00VALID01", 0, &client.TransportError{StatusCode: http.StatusForbidden, Status: "403"}, groupAttributes)

	_, err := newTestResolver(catalog).IsValidID(context.Background(), "B00VALID01")

	assert.Error(t, err)
}
