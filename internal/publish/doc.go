// Package publish sends the configuration state of a build to a socket.io
// endpoint, where monitoring and visualization tools pick it up.
package publish
