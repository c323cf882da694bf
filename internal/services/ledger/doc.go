/*
Package ledger implements the wallet ledger engine.

It owns every balance mutation in the system:

  - Transfer: peer-to-peer payment with a flat fee, debited from the sender
    and never credited anywhere (the fee sink is intentional)
  - TopUp: credit a wallet, optionally funded by a card charge
  - Withdraw: debit a wallet with a percentage fee
  - Cancel: void a still-pending payment inside the cancel window

Correctness model: the balance check and the debit are a single conditional
UPDATE executed inside one database transaction together with the ledger
record insert. Competing debits serialize on the row lock and the loser
re-evaluates the guard against the committed balance, so a wallet can never
go negative and a transfer is either fully applied or fully absent.

Daily limits are evaluated by the limits.Guard before any mutation, always
against a fresh read of the day's activity. Notifications run after commit
and are best effort; their failure never affects the money movement.
*/
package ledger
