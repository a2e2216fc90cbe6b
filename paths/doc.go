// This file is part of Snesprobe.
//
// Snesprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Snesprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Snesprobe.  If not, see <https://www.gnu.org/licenses/>.

// Package paths contains functions to prepare paths for Snesprobe resources.
//
// The ResourcePath() function modifies the supplied resource path such that
// it is prepended with the appropriate Snesprobe configuration directory.
//
// The location of the configuration directory depends on the build tags. A
// development build (no tags) uses the .snesprobe directory in the current
// working directory. A build with the "release" tag uses the snesprobe
// directory in the user's configuration directory, as returned by
// os.UserConfigDir().
//
// The directory is created if it does not exist.
package paths
