package glyph

var font = [numGlyphs]Bitmap{
	Blank: {},
	Digit0: {
		0b01110,
		0b10011,
		0b10101,
		0b11001,
		0b01110,
	},
	Digit1: {
		0b00100,
		0b01100,
		0b00100,
		0b00100,
		0b01110,
	},
	Digit2: {
		0b11100,
		0b00010,
		0b01100,
		0b10000,
		0b11110,
	},
	Digit3: {
		0b11110,
		0b00010,
		0b00100,
		0b10010,
		0b01100,
	},
	Digit4: {
		0b01100,
		0b10100,
		0b11110,
		0b00100,
		0b00100,
	},
	Digit5: {
		0b11110,
		0b10000,
		0b11100,
		0b00010,
		0b11100,
	},
	Digit6: {
		0b00010,
		0b00100,
		0b01110,
		0b10001,
		0b01110,
	},
	Digit7: {
		0b11111,
		0b00010,
		0b00100,
		0b01000,
		0b10000,
	},
	Digit8: {
		0b01110,
		0b10001,
		0b01110,
		0b10001,
		0b01110,
	},
	Digit9: {
		0b01110,
		0b10001,
		0b01110,
		0b00100,
		0b01000,
	},
	CountUp: {
		0b00100,
		0b01110,
		0b10101,
		0b00100,
		0b00100,
	},
	CountDown: {
		0b00100,
		0b00100,
		0b10101,
		0b01110,
		0b00100,
	},
}
