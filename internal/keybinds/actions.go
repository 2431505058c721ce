package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextMain    Context = "main"    // URL input and body view
	ContextHistory Context = "history" // History panel
	ContextNotice  Context = "notice"  // Blocking notice; swallows unbound keys
)

const (
	// Global actions
	ActionQuit Action = "quit"

	// Main view
	ActionFetch         Action = "fetch"
	ActionToggleMethod  Action = "toggle_method"
	ActionPresetNext    Action = "preset_next"
	ActionPresetPrev    Action = "preset_prev"
	ActionPageUp        Action = "page_up"
	ActionPageDown      Action = "page_down"
	ActionCopyBody      Action = "copy_body"
	ActionToggleHistory Action = "toggle_history"

	// History panel
	ActionHistoryUp      Action = "history_up"
	ActionHistoryDown    Action = "history_down"
	ActionHistoryExecute Action = "history_execute"
	ActionHistoryDelete  Action = "history_delete"
	ActionHistoryClear   Action = "history_clear"
	ActionHistoryClose   Action = "history_close"

	// Notice
	ActionDismissNotice Action = "dismiss_notice"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Context     Context
	Description string
}

var actionInfos = []ActionInfo{
	{ActionQuit, ContextGlobal, "Quit"},
	{ActionFetch, ContextMain, "Fetch"},
	{ActionToggleMethod, ContextMain, "Toggle method"},
	{ActionPresetNext, ContextMain, "Next suggestion"},
	{ActionPresetPrev, ContextMain, "Previous suggestion"},
	{ActionPageUp, ContextMain, "Scroll up"},
	{ActionPageDown, ContextMain, "Scroll down"},
	{ActionCopyBody, ContextMain, "Copy body"},
	{ActionToggleHistory, ContextMain, "History"},
	{ActionHistoryUp, ContextHistory, "Move up"},
	{ActionHistoryDown, ContextHistory, "Move down"},
	{ActionHistoryExecute, ContextHistory, "Fetch again"},
	{ActionHistoryDelete, ContextHistory, "Delete entry"},
	{ActionHistoryClear, ContextHistory, "Clear history"},
	{ActionHistoryClose, ContextHistory, "Close"},
	{ActionDismissNotice, ContextNotice, "Dismiss"},
}

// Actions returns every known action in display order
func Actions() []ActionInfo {
	out := make([]ActionInfo, len(actionInfos))
	copy(out, actionInfos)
	return out
}

// GetActionInfo returns information about an action.
// The second result is false for unknown actions.
func GetActionInfo(action Action) (ActionInfo, bool) {
	for _, info := range actionInfos {
		if info.Action == action {
			return info, true
		}
	}
	return ActionInfo{Action: action, Description: string(action)}, false
}
