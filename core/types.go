package core

type Color struct {
	R, G, B, A float32
}

var ColorCharcoal = Color{0.12, 0.12, 0.14, 1}
