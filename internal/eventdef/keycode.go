package eventdef

import "fmt"

// keyCodeSymbols maps the commonly used key_code symbols to their usage
// page codes. This is not the full vendor key-code table the original
// engine ships (thousands of entries covering every keyboard layout and
// vendor extension) — it covers the symbols a configuration is realistically
// authored with by hand. A symbol missing from the table is a construction
// error; a configuration can still name any code directly as a JSON number.
var keyCodeSymbols = map[string]int64{
	"caps_lock": 57, "left_control": 224, "left_shift": 225, "left_option": 226,
	"left_command": 227, "right_control": 228, "right_shift": 229, "right_option": 230,
	"right_command": 231, "fn": 1073741908,
	"return_or_enter": 40, "escape": 41, "delete_or_backspace": 42, "tab": 43,
	"spacebar": 44, "hyphen": 45, "equal_sign": 46,
	"up_arrow": 82, "down_arrow": 81, "left_arrow": 80, "right_arrow": 79,
	"a": 4, "b": 5, "c": 6, "d": 7, "e": 8, "f": 9, "g": 10, "h": 11, "i": 12,
	"j": 13, "k": 14, "l": 15, "m": 16, "n": 17, "o": 18, "p": 19, "q": 20,
	"r": 21, "s": 22, "t": 23, "u": 24, "v": 25, "w": 26, "x": 27, "y": 28, "z": 29,
	"1": 30, "2": 31, "3": 32, "4": 33, "5": 34, "6": 35, "7": 36, "8": 37, "9": 38, "0": 39,
	"f1": 58, "f2": 59, "f3": 60, "f4": 61, "f5": 62, "f6": 63, "f7": 64,
	"f8": 65, "f9": 66, "f10": 67, "f11": 68, "f12": 69,
}

var pointingButtonSymbols = map[string]int64{
	"button1": 1, "button2": 2, "button3": 3, "button4": 4, "button5": 5,
}

// codeFromSymbol resolves a family's value to a numeric code. The value
// may already be a JSON number (passed straight through for every family)
// or a known symbolic string; any other string, or a value of any other
// JSON type, is a construction error.
func codeFromSymbol(family string, value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		table := keyCodeSymbols
		if family == "pointing_button" {
			table = pointingButtonSymbols
		}
		if code, ok := table[v]; ok {
			return code, nil
		}
		return 0, fmt.Errorf("unrecognized %s symbol %q", family, v)
	default:
		return 0, fmt.Errorf("%s value must be a string or number, got %T", family, value)
	}
}
