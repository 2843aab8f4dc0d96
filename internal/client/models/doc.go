// Package models defines the client-side data model of the classifieds
// marketplace: users and sessions, categories, listings with their derived
// moderation state, the submitted Draft, and the admin UserPosts view.
//
// Wire decoding is lenient where the backend is: prices and counts may arrive
// as numbers, numeric strings or null.
package models
