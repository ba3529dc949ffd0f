// Package ui holds the small pieces of terminal output pingdeck prints
// outside the dashboard: status symbols, the colour palette and the
// progress spinner used by 'pingdeck export'.
package ui
