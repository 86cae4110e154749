package main

import (
	"fmt"
	"math"

	drawille "github.com/esimov/drawille/core"
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func main() {
	c := drawille.NewCanvas()

	// Sine wave sampled every tenth of a degree.
	for x := 0; x < 1800; x++ {
		c.Set(float64(x)/10, math.Sin(radians(float64(x)))*10)
	}
	fmt.Println(c.Frame())
	c.Clear()

	// Sine and cosine sharing the same axis.
	for x := 0; x < 1800; x += 10 {
		c.Set(float64(x)/10, 10+math.Sin(radians(float64(x)))*10)
		c.Set(float64(x)/10, 10+math.Cos(radians(float64(x)))*10)
	}
	fmt.Println(c.Frame())
	c.Clear()

	for x := 0; x < 3600; x += 20 {
		c.Set(float64(x)/20, 4+math.Sin(radians(float64(x)))*4)
	}
	fmt.Println(c.Frame())
	c.Clear()

	// Filled and toggled squares next to a wave.
	for x := 0; x < 360; x += 4 {
		c.Set(float64(x)/4, 30+math.Sin(radians(float64(x)))*30)
	}
	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y++ {
			c.Set(float64(x), float64(y))
			c.Toggle(float64(x+30), float64(y+30))
			c.Toggle(float64(x+60), float64(y))
		}
	}
	fmt.Println(c.Frame())
}
