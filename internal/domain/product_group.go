package domain

// ProductGroupKind is the closed set of product groups the traversal policies care about.
type ProductGroupKind int

const (
	ProductGroupOther ProductGroupKind = iota
	ProductGroupBook
	ProductGroupAuthorityNonBuyable
	ProductGroupNotFound
)

const (
	ProductGroupBookName                = "Book"
	ProductGroupAuthorityNonBuyableName = "Authority Non Buyable"
	ProductGroupNotFoundName            = "Not Found"
)

// ProductGroup is the catalog's classification of an item. The remote vocabulary is open,
// so anything that is not one of the recognized literals is kept as ProductGroupOther
// together with the raw value.
type ProductGroup struct {
	Kind ProductGroupKind
	Raw  string
}

var (
	ProductGroupBookValue                = ProductGroup{Kind: ProductGroupBook, Raw: ProductGroupBookName}
	ProductGroupAuthorityNonBuyableValue = ProductGroup{Kind: ProductGroupAuthorityNonBuyable, Raw: ProductGroupAuthorityNonBuyableName}
	ProductGroupNotFoundValue            = ProductGroup{Kind: ProductGroupNotFound, Raw: ProductGroupNotFoundName}
)

// ParseProductGroup maps the raw ProductGroup text of a response onto a ProductGroup.
func ParseProductGroup(raw string) ProductGroup {
	switch raw {
	case ProductGroupBookName:
		return ProductGroupBookValue
	case ProductGroupAuthorityNonBuyableName:
		return ProductGroupAuthorityNonBuyableValue
	case ProductGroupNotFoundName, "":
		return ProductGroupNotFoundValue
	default:
		return ProductGroup{Kind: ProductGroupOther, Raw: raw}
	}
}

func (g ProductGroup) String() string {
	return g.Raw
}

// IsFamilyRootPolicy reports whether related items of this group are walked through
// the paginated authority-title relationship.
func (g ProductGroup) IsFamilyRootPolicy() bool {
	return g.Kind == ProductGroupBook || g.Kind == ProductGroupAuthorityNonBuyable
}
