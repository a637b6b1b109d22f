// Package settings implements the engine for the game's mod-settings file:
// the in-memory document model, a tolerant parser, and a deterministic
// serializer that reproduces the game's own formatting byte for byte.
//
// The file is an XML dialect built almost entirely out of Property
// elements addressed by their name attribute:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<Data template="GcModSettings">
//	  <Property name="DisableAllMods" value="false" />
//	  <Property name="Data">
//	    <Property name="Data" value="GcModSettingsInfo" _index="0">
//	      <Property name="Name" value="MYMOD" />
//	      ...
//	      <Property name="Dependencies" />
//	    </Property>
//	  </Property>
//	</Data>
//
// The whole file is rewritten after every edit, so the serializer must be
// pure: identical document state always produces identical bytes.
package settings
