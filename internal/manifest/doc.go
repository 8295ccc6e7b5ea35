// Package manifest handles the two files an add-on package ships: the package
// descriptor (package.json, whose "webStarter" block carries catalog metadata)
// and the declarative add-on manifest (addon.yaml) found in each add-on entry
// directory. Add-on manifests are validated against an embedded JSON Schema.
package manifest
