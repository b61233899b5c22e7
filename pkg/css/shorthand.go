package css

// Shorthand properties are expanded into longhands when declarations are
// parsed and again when the cascade meets one, so rules built in code may
// use either form.

var edges = [4]string{"top", "right", "bottom", "left"}

// IsShorthand reports whether name expands into longhands.
func IsShorthand(name string) bool {
	switch name {
	case "margin", "padding", "border", "border-width", "border-color", "border-style",
		"border-top", "border-right", "border-bottom", "border-left", "background":
		return true
	}
	return false
}

// Expand returns the longhand declarations for d, or d itself. A keyword
// holding several components, as ParseValue returns for "10px 20px", is
// split before expansion.
func Expand(d Declaration) []Declaration {
	if !IsShorthand(d.Name) {
		return []Declaration{d}
	}
	values := []Value{d.Value}
	if d.Value.Kind == KindKeyword {
		if parts := ParseValues(d.Value.Keyword); len(parts) > 1 {
			values = parts
		}
	}
	return expandShorthand(d.Name, values)
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(property string, values []Value) []Declaration {
	switch property {
	case "margin", "padding":
		// margin: 10px -> margin-top/right/bottom/left: 10px
		return expandBoxProperty(property, "", values)
	case "border-width":
		return expandBoxProperty("border", "-width", values)
	case "border-color":
		return expandBoxProperty("border", "-color", values)
	case "border-style":
		return expandBoxProperty("border", "-style", values)
	case "border":
		// border: 1px solid black -> border-width/style/color
		var out []Declaration
		for _, edge := range edges {
			out = append(out, expandBorderSide("border-"+edge, values)...)
		}
		return out
	case "border-top", "border-right", "border-bottom", "border-left":
		return expandBorderSide(property, values)
	case "background":
		for _, v := range values {
			if v.Kind == KindColor {
				return []Declaration{{Name: "background-color", Value: v}}
			}
		}
		return nil
	}
	if len(values) == 1 {
		return []Declaration{{Name: property, Value: values[0]}}
	}
	// Multi-component values of other properties are kept as one keyword.
	return []Declaration{{Name: property, Value: joinKeyword(values)}}
}

// expandBoxProperty expands margin/padding style shorthands.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(prefix, suffix string, values []Value) []Declaration {
	var sides [4]Value
	switch len(values) {
	case 1:
		sides = [4]Value{values[0], values[0], values[0], values[0]}
	case 2:
		sides = [4]Value{values[0], values[1], values[0], values[1]}
	case 3:
		sides = [4]Value{values[0], values[1], values[2], values[1]}
	case 4:
		sides = [4]Value{values[0], values[1], values[2], values[3]}
	default:
		return nil
	}
	out := make([]Declaration, 4)
	for i, edge := range edges {
		out[i] = Declaration{Name: prefix + "-" + edge + suffix, Value: sides[i]}
	}
	return out
}

// expandBorderSide splits "2px dotted #f00" for one edge.
func expandBorderSide(prefix string, values []Value) []Declaration {
	var out []Declaration
	for _, v := range values {
		switch {
		case v.Kind == KindLength:
			out = append(out, Declaration{Name: prefix + "-width", Value: v})
		case v.Kind == KindColor:
			out = append(out, Declaration{Name: prefix + "-color", Value: v})
		case isBorderStyle(v.Keyword):
			out = append(out, Declaration{Name: prefix + "-style", Value: v})
		case v.Keyword == "thin" || v.Keyword == "medium" || v.Keyword == "thick":
			out = append(out, Declaration{Name: prefix + "-width", Value: v})
		}
	}
	return out
}

func isBorderStyle(k string) bool {
	switch k {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func joinKeyword(values []Value) Value {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += " "
		}
		s += v.String()
	}
	return Keyword(s)
}
