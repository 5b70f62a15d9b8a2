package ast

// TypeCheck checks the subtree rooted at n, children before parents. Every
// failure is reported through the model's diagnostics; checking continues
// past the first failure so all of them are reported.
func TypeCheck(m *Model, n Node) bool {
	ok := true
	for _, c := range n.Children() {
		if !TypeCheck(m, c) {
			ok = false
		}
	}
	if !ok {
		return false
	}
	return n.TypeCheck(m)
}
