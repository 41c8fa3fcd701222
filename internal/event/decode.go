package event

import (
	"strconv"
	"strings"
)

// Decode turns an identifier and its payload into an Event.
//
// Known identifiers:
//
//	synth.start.<index>.<lineNo>.<exampleCount>
//	synth.end.<index>.<exitCode>
//	synth.stdout, synth.stderr (also the older synth.sterr)
//	focus.projectionBox.focus.{custom,default}
//	focus.projectionBox.exit
//	focus.example.<index>.{blur,focus}
//	example.<index>.{change,include,exclude}
//	example.all.reset
//
// Anything else, including a bad integer or a wrong token count, decodes
// to Unrecognized. Decode never fails.
func Decode(identifier, payload string) Event {
	tok := strings.Split(identifier, ".")
	var ev Event
	switch tok[0] {
	case "synth":
		ev = decodeSynth(tok[1:], payload)
	case "focus":
		ev = decodeFocus(tok[1:], payload)
	case "example":
		ev = decodeExample(tok[1:], payload)
	}
	if ev == nil {
		return Unrecognized{Original: identifier}
	}
	return ev
}

func decodeSynth(tok []string, payload string) Event {
	if len(tok) == 0 {
		return nil
	}
	switch tok[0] {
	case "start":
		if len(tok) != 4 {
			return nil
		}
		index, ok1 := parseU32(tok[1])
		line, ok2 := parseU32(tok[2])
		examples, ok3 := parseU32(tok[3])
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		return SynthStart{Index: index, LineNumber: line, ExampleCount: examples}
	case "end":
		if len(tok) != 3 {
			return nil
		}
		index, ok1 := parseU32(tok[1])
		code, err := strconv.ParseInt(tok[2], 10, 32)
		if !ok1 || err != nil {
			return nil
		}
		return SynthEnd{Index: index, ExitCode: int32(code), Result: payload}
	case "stdout":
		if len(tok) != 1 {
			return nil
		}
		return SynthStdOut{Text: payload}
	case "stderr", "sterr":
		if len(tok) != 1 {
			return nil
		}
		return SynthStdErr{Text: payload}
	}
	return nil
}

func decodeFocus(tok []string, payload string) Event {
	if len(tok) == 0 {
		return nil
	}
	switch tok[0] {
	case "projectionBox":
		switch {
		case len(tok) == 2 && tok[1] == "exit":
			return FocusExit{}
		case len(tok) == 3 && tok[1] == "focus" && tok[2] == "custom":
			return FocusCustom{Text: payload}
		case len(tok) == 3 && tok[1] == "focus" && tok[2] == "default":
			return FocusDefault{Text: payload}
		}
	case "example":
		if len(tok) != 3 {
			return nil
		}
		index, ok := parseU32(tok[1])
		if !ok {
			return nil
		}
		switch tok[2] {
		case "blur":
			return ExampleBlur{Index: index, Content: payload}
		case "focus":
			return ExampleFocus{Index: index, Content: payload}
		}
	}
	return nil
}

func decodeExample(tok []string, payload string) Event {
	if len(tok) != 2 {
		return nil
	}
	if tok[0] == "all" {
		if tok[1] == "reset" {
			return ExampleAllReset{}
		}
		return nil
	}
	index, ok := parseU32(tok[0])
	if !ok {
		return nil
	}
	switch tok[1] {
	case "change":
		// The payload is a "before,after" pair; further components are dropped.
		parts := strings.SplitN(payload, ",", 3)
		if len(parts) < 2 {
			return nil
		}
		return ExampleChanged{Index: index, Before: parts[0], After: parts[1]}
	case "include":
		return ExampleIncluded{Index: index, Content: payload}
	case "exclude":
		return ExampleExcluded{Index: index, Content: payload}
	}
	return nil
}

func parseU32(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
