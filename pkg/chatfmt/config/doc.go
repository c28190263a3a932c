/*
Package config loads format rule lists from YAML or JSON documents.

A document is an ordered list of format specs:

	formats:
	  - name: staff
	    permission: chat.format.staff
	    format: "&c[{server}] {display_name}&7: &f{message}"
	  - name: default
	    format: "[{server}] {username}: {message}"

Load with FromFile, FromYAML, or FromJSON, then lower into predicates with
Build, supplying the permission backend and attribute derivation the rules
reference:

	cfg, err := config.FromFile("chat.yml")
	rules, err := config.Build(cfg, config.BuildOptions[User]{
	    Permissions: perms,
	    Vars:        userVars,
	})
	engine.SetFormats(rules)

Reloading is the same sequence ending in Engine.SetFormats, which swaps the
whole list atomically.
*/
package config
