package component

// Builtin widget type names.
const (
	TypeButton   = "Button"
	TypeLabel    = "Label"
	TypeTextBox  = "TextBox"
	TypeCheckbox = "Checkbox"
	TypeSlider   = "Slider"
)

// NewButton creates a push button with the given caption.
func NewButton(text string) Component {
	return newWidget(TypeButton, map[string]string{
		"text":    text,
		"enabled": "true",
	})
}

// NewLabel creates a static text label.
func NewLabel(text string) Component {
	return newWidget(TypeLabel, map[string]string{
		"text": text,
	})
}

// NewTextBox creates a single-line text input.
func NewTextBox(text string) Component {
	return newWidget(TypeTextBox, map[string]string{
		"text":        text,
		"placeholder": "",
		"enabled":     "true",
	})
}

// NewCheckbox creates a checkbox with a caption and checked state.
func NewCheckbox(text string, checked bool) Component {
	state := "false"
	if checked {
		state = "true"
	}
	return newWidget(TypeCheckbox, map[string]string{
		"text":    text,
		"checked": state,
	})
}

// NewSlider creates a slider with value and range properties.
func NewSlider(value, min, max string) Component {
	return newWidget(TypeSlider, map[string]string{
		"value": value,
		"min":   min,
		"max":   max,
	})
}
