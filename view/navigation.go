package view

import "go.uber.org/zap"

// Key codes of the arrow keys.
const (
	KeyArrowLeft  = 37
	KeyArrowUp    = 38
	KeyArrowRight = 39
	KeyArrowDown  = 40
)

// KeyEventData is the data of keyboard bubbling events such as "arrowKey".
type KeyEventData struct {
	KeyCode      int
	ShiftKey     bool
	DomSelection NativeSelection
}

// InjectUIElementHandling registers a low priority "arrowKey" listener
// that moves the native selection over UI elements when the right arrow
// would otherwise stop in front of them. A collapsed selection is collapsed
// again after the skipped elements; an expanded one, with shift held, is
// extended there.
func InjectUIElementHandling(doc *Document, conv DomConverter) *BubblingListener {
	logger := doc.logger.Named("navigation")
	return doc.bubbling.On("arrowKey", func(info *BubblingEventInfo, data any) {
		key, ok := data.(*KeyEventData)
		if !ok || key.KeyCode != KeyArrowRight || key.DomSelection == nil {
			return
		}
		jumpOverUIElement(key, conv, logger)
	}, ListenOptions{Priority: PriorityLow})
}

func jumpOverUIElement(key *KeyEventData, conv DomConverter, logger *zap.Logger) {
	domSelection := key.DomSelection
	collapsed := domSelection.RangeCount() == 1 && domSelection.IsCollapsed()
	if !collapsed && !key.ShiftKey {
		return
	}

	position, ok := conv.DomPositionToView(domSelection.FocusNode(), domSelection.FocusOffset())
	if !ok {
		return
	}

	jumped := false
	next := position.LastMatchingPosition(func(value WalkerValue) bool {
		switch value.Item.kind {
		case KindUI:
			jumped = true
			return true
		case KindAttribute:
			return true
		default:
			return false
		}
	}, Forward)
	if !jumped {
		return
	}

	node, offset, ok := conv.ViewPositionToDom(next)
	if !ok {
		return
	}
	if collapsed {
		domSelection.Collapse(node, offset)
	} else {
		domSelection.Extend(node, offset)
	}
	logger.Debug("jumped over ui elements", zap.Int("offset", next.Offset()), zap.Bool("collapsed", collapsed))
}
