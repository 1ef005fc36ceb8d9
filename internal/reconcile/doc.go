// Package reconcile undoes a previous install in a project directory. It
// removes the files the manifest recorded, takes this tool's hook and
// allow-list entries back out of every settings file and deletes the private
// state directory. It runs before every install so that installing twice
// leaves the same result as installing once.
package reconcile
