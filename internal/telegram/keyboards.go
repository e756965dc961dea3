package telegram

// ReplyKeyboardMarkup is a custom reply keyboard.
type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
}

// KeyboardButton is one button on a reply keyboard.
type KeyboardButton struct {
	Text string `json:"text"`
}

// StartKeyboard returns the main menu keyboard.
func StartKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: getSummaryButton}},
		},
		ResizeKeyboard:        true,
		InputFieldPlaceholder: "Choose an option",
	}
}

// NumericKeyboard returns the message-count picker shown when a summary is
// requested. Free-form numbers are accepted as well.
func NumericKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: "10"}, {Text: "20"}, {Text: "50"}},
			{{Text: "100"}, {Text: "200"}, {Text: "500"}},
			{{Text: cancelButton}},
		},
		ResizeKeyboard:        true,
		OneTimeKeyboard:       true,
		InputFieldPlaceholder: "Введите число или выберите ниже",
	}
}
