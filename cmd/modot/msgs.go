package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A mod manager for the game's settings file and mods folder"
	MsgListShort       = "List registered mods in load order"
	MsgAddShort        = "Register a mod entry in the settings file"
	MsgRemoveShort     = "Delete a mod and its settings entry"
	MsgEnableShort     = "Enable mods by name"
	MsgDisableShort    = "Disable mods by name"
	MsgEnableAllShort  = "Enable every registered mod"
	MsgDisableAllShort = "Disable every registered mod"
	MsgGlobalShort     = "Set the game's disable-all-mods flag"
	MsgReorderShort    = "Reassign load order from the given complete name list"
	MsgInstallShort    = "Install mods from archive files"
	MsgResolveShort    = "Resolve a staged install conflict"
	MsgFinalizeShort   = "Commit staged archive content under a chosen name"
	MsgCleanupShort    = "Discard a staging directory"
	MsgPathShort       = "Print the discovered game installation path"
	MsgOpenShort       = "Open the mods folder in the file manager"
	MsgResetShort      = "Delete the settings file so the game regenerates it"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoMods           = "No mods registered."
	MsgGlobalDisabled   = "NOTE: all mods are disabled by the global flag."
	MsgModEnabled       = "Enabled '%s'\n"
	MsgModDisabled      = "Disabled '%s'\n"
	MsgAllEnabled       = "Enabled all mods."
	MsgAllDisabled      = "Disabled all mods."
	MsgGlobalSet        = "Disable-all flag set to %v\n"
	MsgReordered        = "Load order updated for %d mods.\n"
	MsgModAdded         = "Registered '%s' with priority %d\n"
	MsgModRemoved       = "Removed '%s'\n"
	MsgInstalled        = "  installed %s\n"
	MsgConflict         = "  conflict  %s (staged at %s)\n"
	MsgMessy            = "  messy archive, staged at %s (name it with 'modot finalize')\n"
	MsgInstallFailure   = "  failed    %s: %v\n"
	MsgNothingInstalled = "Archive contained nothing to install."
	MsgFinalized        = "Installed staged content as '%s'\n"
	MsgCleanedUp        = "Removed staging directory %s\n"
	MsgResolved         = "Conflict for '%s' resolved (%s)\n"
	MsgSettingsDeleted  = "Settings file deleted; the game will regenerate it."
	MsgSettingsMissing  = "No settings file found."

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrOpenSession = "failed to open settings session: %w"
)
