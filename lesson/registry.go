package lesson

var registry = []Lesson{
	c1l1, c1l2, c1l3,
	c2l1, c2l2,
	c4l1,
	c10l1,
	c13l1,
	c14l1, c14l2, c14l3,
	c15l1,
	c16l1,
	c17l1,
	c18l1,
}
