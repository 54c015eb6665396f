/*
Package notify sends optional email notifications on strategy state changes.

Sending is opt-in (email.on_change), cooldown-gated, and never fatal: a
failed send is logged and the watcher keeps running. STARTTLS and implicit
TLS modes are supported.
*/
package notify
