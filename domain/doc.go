// Package domain holds the team and member models, the member search
// condition and the flat projection returned by searches.
package domain
