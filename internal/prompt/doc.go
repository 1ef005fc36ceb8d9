// Package prompt asks the user to choose tools, content and options.
// Terminal renders pterm interactive widgets; Line reads numbered answers
// from any reader and serves pipes and tests.
package prompt
