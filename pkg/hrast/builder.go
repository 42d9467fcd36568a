package hrast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or source line.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text leaf holding s.
func NewText(s string) *Node {
	n := NewNode(NodeText)
	n.Inline = NewInlineAttrs().WithText(s)
	return n
}

// NewHeading creates a heading block of the given level.
func NewHeading(level int) *Node {
	n := NewNode(NodeHeading)
	n.Block = NewBlockAttrs().WithHeadingLevel(level)
	return n
}

// NewList creates an empty list container of the given kind.
func NewList(kind ListKind) *Node {
	n := NewNode(NodeList)
	n.Block = NewBlockAttrs().WithList(&ListAttrs{Kind: kind})
	return n
}

// NewBlockQuote creates an empty quote container at the given depth.
func NewBlockQuote(depth int) *Node {
	n := NewNode(NodeBlockQuote)
	n.Block = NewBlockAttrs().WithQuoteDepth(depth)
	return n
}

// NewCodeBlock creates a code block holding raw content.
func NewCodeBlock(language, content string, closed bool) *Node {
	n := NewNode(NodeCodeBlock)
	n.Block = NewBlockAttrs().WithCodeBlock(&CodeBlockAttrs{
		Language: language,
		Content:  content,
		Closed:   closed,
	})
	return n
}

// NewLinkBlock creates a standalone link (kind NodeLinkBlock) or image
// (kind NodeImageBlock) block.
func NewLinkBlock(kind NodeKind, text, destination string) *Node {
	n := NewNode(kind)
	n.Block = NewBlockAttrs().WithLink(&LinkAttrs{Destination: destination, Text: text})
	return n
}

// NewLink creates an inline link (kind NodeLink) or image (kind NodeImage).
func NewLink(kind NodeKind, text, destination string) *Node {
	n := NewNode(kind)
	n.Inline = NewInlineAttrs().WithLink(&LinkAttrs{Destination: destination, Text: text})
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// AppendText appends s to parent, merging it into a trailing text node when
// there is one. Empty strings are ignored.
func AppendText(parent *Node, s string) {
	if parent == nil || s == "" {
		return
	}
	if last := parent.LastChild; last != nil && last.Kind == NodeText && last.Inline != nil {
		last.Inline.Text += s
		return
	}
	AppendChild(parent, NewText(s))
}
