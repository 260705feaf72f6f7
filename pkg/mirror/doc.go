// Package mirror manages the on-disk bare mirror cache.
//
// Store answers existence questions and serializes materialization with an
// advisory file lock per mirror path. Lifecycle performs the two mutating
// operations, clone --mirror and remote update, by invoking the native git
// binary with stderr streamed through to the SSH client. List and Info use
// go-git to enumerate and describe materialized mirrors without spawning
// subprocesses.
//
// Mirrors live at <repodir>/<tag>/<relative-path> and their presence on
// the filesystem is the only state tracked; this package never deletes a
// mirror.
package mirror
