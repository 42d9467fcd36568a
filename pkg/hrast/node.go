// Package hrast provides the HRML document tree: block nodes, inline nodes,
// and the diagnostics recorded while the tree was built.
//
// A tree is produced fresh by every parse and is not modified afterwards.
package hrast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level HRML elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockQuote
	NodeCodeBlock
	NodeHorizontalRule
	NodeLinkBlock
	NodeImageBlock

	// Inline-level nodes.
	NodeText
	NodeBold
	NodeItalic
	NodeUnderline
	NodeLink
	NodeImage
)

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeParagraph:
		return "Paragraph"
	case NodeHeading:
		return "Heading"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeBlockQuote:
		return "BlockQuote"
	case NodeCodeBlock:
		return "CodeBlock"
	case NodeHorizontalRule:
		return "HorizontalRule"
	case NodeLinkBlock:
		return "LinkBlock"
	case NodeImageBlock:
		return "ImageBlock"
	case NodeText:
		return "Text"
	case NodeBold:
		return "Bold"
	case NodeItalic:
		return "Italic"
	case NodeUnderline:
		return "Underline"
	case NodeLink:
		return "Link"
	case NodeImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Node represents a single node in the HRML AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Line is the 1-based source line the node starts on, or 0 for
	// synthetic nodes.
	Line int

	// Column is the 1-based byte column of the node's first token.
	Column int

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockQuote, NodeCodeBlock, NodeHorizontalRule, NodeLinkBlock, NodeImageBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeBold, NodeItalic, NodeUnderline, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// IsSpan returns true for the paired inline kinds that wrap children.
func (n *Node) IsSpan() bool {
	switch n.Kind {
	case NodeBold, NodeItalic, NodeUnderline:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the literal text of a NodeText node, or "" for other kinds.
func (n *Node) Text() string {
	if n.Kind != NodeText || n.Inline == nil {
		return ""
	}
	return n.Inline.Text
}

// PlainText concatenates the text content of the node and its descendants.
// Links contribute their visible text and images their alt text.
func (n *Node) PlainText() string {
	var out []byte

	for child := range All(n) {
		if child.Inline == nil {
			continue
		}
		switch child.Kind {
		case NodeText:
			out = append(out, child.Inline.Text...)
		case NodeLink, NodeImage:
			if child.Inline.Link != nil {
				out = append(out, child.Inline.Link.Text...)
			}
		}
	}

	return string(out)
}
