// Package catalog fetches the template repository that update installs
// from. The Cloner interface hides git so commands can be tested with a
// fake.
package catalog
