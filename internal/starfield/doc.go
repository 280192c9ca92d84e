// Package starfield derives stars from grid coordinates.
//
// Every integer cell (x, y) of an unbounded grid either holds a star or not.
// The answer and the star's attributes are a pure function of (x, y, seed):
//
//	star := starfield.Generate(12, -40, seed)
//	if star.Exists {
//		fmt.Println(star.Name, star.Diameter, star.Color)
//	}
//
// # Key packing
//
// x+seed and y+seed are each masked to 16 bits and packed into one 32-bit
// key, so the field repeats every 65536 cells along both axes.
//
// # Thread Safety
//
// Generate holds no state between calls and may be called from any number
// of goroutines. A [Source] is not safe for concurrent use.
package starfield
