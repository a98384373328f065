package resolver

import "github.com/menta2k/card-overlay/pkg/types"

// Resolver turns a front-design descriptor into the concrete layout values
type Resolver interface {
	Resolve(front types.FrontDesign) (types.Design, error)
}

// Func adapts a plain function to the Resolver interface
type Func func(front types.FrontDesign) (types.Design, error)

// Resolve calls f(front)
func (f Func) Resolve(front types.FrontDesign) (types.Design, error) {
	return f(front)
}
