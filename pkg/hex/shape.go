package hex

// Shape is the closed boundary polygon of one hexagon relative to its origin.
// The first and last vertices coincide. The numeric mappings never consume
// it; it exists for renderers and hit-test visualizations. The 0.25 corner
// cuts of the column square land collinear with these vertices, which is why
// the footprint is a genuine flat-top hexagon rather than an octagon.
var Shape = [7]WorldPoint{
	{0.25, 0},
	{0.75, 0},
	{1.25, 1},
	{0.75, 2},
	{0.25, 2},
	{-0.25, 1},
	{0.25, 0},
}
