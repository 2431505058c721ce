/*
Package keybinds maps key strings to actions per UI context.

Contexts:
  - global: checked after every other context except notice
  - main: URL input and body view
  - history: the history panel
  - notice: a blocking notice; keys without a binding here are ignored

Defaults come from NewDefaultRegistry. Load applies overrides from the
keybinds section of the config file, where each entry maps an action name
to a comma separated key list:

	keybinds:
	  fetch: "enter,ctrl+f"
	  copy_body: "ctrl+y"

An override replaces every default key of that action. Load fails when a
reserved key (ctrl+c) is rebound or an action is left without keys.
*/
package keybinds
