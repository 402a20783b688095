package workflow

// Button is one inline-keyboard option. Data is the callback token the
// transport feeds back into the controller when the button is pressed.
type Button struct {
	Label string
	Data  string
}

// Document is a binary attachment, currently only the rendered quiz PDF.
type Document struct {
	Name  string
	Bytes []byte
}

// Reply is the transport-neutral outcome of handling one inbound message.
type Reply struct {
	Text     string
	Buttons  []Button
	Document *Document
}

func textReply(text string) *Reply {
	return &Reply{Text: text}
}
