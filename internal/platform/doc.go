// Package platform wraps the filesystem calls whose behavior differs between
// operating systems: directory links, canonical path resolution, and
// permission bits.
package platform
