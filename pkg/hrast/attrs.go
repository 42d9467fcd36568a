package hrast

// MaxHeadingLevel is the deepest heading level HTML can represent.
const MaxHeadingLevel = 6

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// QuoteDepth is the nesting depth (1-based) for NodeBlockQuote.
	QuoteDepth int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// Link holds the target for NodeLinkBlock and NodeImageBlock.
	Link *LinkAttrs
}

// ListKind distinguishes the two list families.
type ListKind uint8

const (
	// ListUnordered is a list built from `ja` items.
	ListUnordered ListKind = iota

	// ListOrdered is a list built from `jl` items.
	ListOrdered
)

// String returns "unordered" or "ordered".
func (k ListKind) String() string {
	if k == ListOrdered {
		return "ordered"
	}
	return "unordered"
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Kind is the list family.
	Kind ListKind
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Language is the fence's language hint. Empty when none was given.
	Language string

	// Content is the raw, unescaped code.
	Content string

	// Closed is false when the fence ran to end of input.
	Closed bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText.
	Text string

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs
}

// LinkAttrs holds attributes for link and image nodes, inline or block.
type LinkAttrs struct {
	// Destination is the link URL or image source, as written.
	Destination string

	// Text is the visible link text, or the alt text of an image.
	Text string
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithQuoteDepth sets the quote depth and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithQuoteDepth(depth int) *BlockAttrs {
	a.QuoteDepth = depth
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithLink sets the block link target and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithLink(attrs *LinkAttrs) *BlockAttrs {
	a.Link = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text string) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}
