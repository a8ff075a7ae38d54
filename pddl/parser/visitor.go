package parser

// Visitor receives nodes in a pre/post order traversal. Begin is invoked
// before a node's children, End after them. Either callback may return
// false to abort the whole traversal.
type Visitor interface {
	Begin(n Node) bool
	End(n Node) bool
}

// Walk traverses the tree rooted at n in source order. It reports whether
// the traversal ran to completion.
func Walk(n Node, v Visitor) bool {
	if n == nil {
		return true
	}
	if !v.Begin(n) {
		return false
	}
	if !walkChildren(n, v) {
		return false
	}
	return v.End(n)
}

func walkChildren(n Node, v Visitor) bool {
	switch node := n.(type) {
	case *File:
		if node.Domain != nil && !Walk(node.Domain, v) {
			return false
		}
		if node.Problem != nil && !Walk(node.Problem, v) {
			return false
		}

	case *Domain:
		for i := range node.Requirements {
			if !Walk(&node.Requirements[i], v) {
				return false
			}
		}
		if node.Types != nil && !Walk(node.Types, v) {
			return false
		}
		if node.Constants != nil && !Walk(node.Constants, v) {
			return false
		}
		for _, decl := range node.Predicates {
			if !Walk(decl, v) {
				return false
			}
		}
		for _, action := range node.Actions {
			if !Walk(action, v) {
				return false
			}
		}

	case *Problem:
		if node.Objects != nil && !Walk(node.Objects, v) {
			return false
		}
		for _, lit := range node.Init {
			if !Walk(lit, v) {
				return false
			}
		}
		if node.Goal != nil && !Walk(node.Goal, v) {
			return false
		}

	case *TypedList:
		for _, group := range node.Groups {
			if !Walk(group, v) {
				return false
			}
		}

	case *TypedGroup:
		for i := range node.Names {
			if !Walk(&node.Names[i], v) {
				return false
			}
		}
		if node.Type != nil && !Walk(node.Type, v) {
			return false
		}

	case *PredicateDecl:
		if !Walk(&node.Name, v) {
			return false
		}
		if node.Params != nil && !Walk(node.Params, v) {
			return false
		}

	case *Action:
		if !Walk(&node.Name, v) {
			return false
		}
		if node.Params != nil && !Walk(node.Params, v) {
			return false
		}
		if node.Precondition != nil && !Walk(node.Precondition, v) {
			return false
		}
		if node.Effect != nil && !Walk(node.Effect, v) {
			return false
		}

	case *AndExpr:
		for _, arg := range node.Args {
			if !Walk(arg, v) {
				return false
			}
		}

	case *OrExpr:
		for _, arg := range node.Args {
			if !Walk(arg, v) {
				return false
			}
		}

	case *NotExpr:
		if !Walk(node.Arg, v) {
			return false
		}

	case *EqualExpr:
		if !Walk(&node.Left, v) {
			return false
		}
		if !Walk(&node.Right, v) {
			return false
		}

	case *PredicateExpr:
		if !Walk(&node.Name, v) {
			return false
		}
		for i := range node.Args {
			if !Walk(&node.Args[i], v) {
				return false
			}
		}

	case *InitLiteral:
		if !Walk(node.Pred, v) {
			return false
		}

	case *Requirement, *Name:
		// Leaves.
	}
	return true
}
