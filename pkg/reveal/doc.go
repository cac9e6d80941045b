/*
Package reveal tracks which invitation sections have scrolled into view.

A Controller watches sections through a ports.Observer and flips a one-way
visible flag the first time a section crosses the threshold. The flag drives
the fade-in presentation only; it carries no business data. Rearm resets all
flags and watches the same sections again, which is how a restarted flow
replays its intro animations.
*/
package reveal
