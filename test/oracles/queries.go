package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_balance_status_consistent",
			SQL: `SELECT id, status, balance FROM deals
                  WHERE (status = 'funded') <> (balance > 0)`,
		},
		{
			Name: "O2_party_index_complete",
			SQL: `SELECT d.id FROM deals d
                  LEFT JOIN deal_parties pb ON pb.deal_id = d.id AND pb.party = d.buyer
                  LEFT JOIN deal_parties ps ON ps.deal_id = d.id AND ps.party = d.seller
                  WHERE pb.deal_id IS NULL OR ps.deal_id IS NULL`,
		},
		{
			Name: "O3_party_index_exact",
			SQL: `SELECT p.deal_id FROM deal_parties p
                  LEFT JOIN deals d ON d.id = p.deal_id
                  WHERE d.id IS NULL
                  UNION ALL
                  SELECT deal_id FROM deal_parties
                  GROUP BY deal_id HAVING COUNT(*) <> 2`,
		},
		{
			Name: "O4_ledger_conservation",
			SQL: `SELECT d.id, d.balance, COALESCE(l.net, 0) FROM deals d
                  LEFT JOIN (
                      SELECT deal_id,
                             SUM(CASE WHEN direction = 'deposit' THEN amount ELSE -amount END) AS net
                      FROM ledger_entries GROUP BY deal_id
                  ) l ON l.deal_id = d.id
                  WHERE COALESCE(l.net, 0) <> d.balance`,
		},
		{
			Name: "O5_terminal_single_withdrawal",
			SQL: `SELECT d.id, d.status FROM deals d
                  WHERE d.status IN ('released', 'refunded')
                    AND (SELECT COUNT(*) FROM ledger_entries e
                         WHERE e.deal_id = d.id AND e.direction = 'withdrawal') <> 1`,
		},
		{
			Name: "O6_withdrawal_recipient",
			SQL: `SELECT e.id FROM ledger_entries e
                  JOIN deals d ON d.id = e.deal_id
                  WHERE e.direction = 'withdrawal'
                    AND ((d.status = 'released' AND e.recipient <> d.seller)
                      OR (d.status = 'refunded' AND e.recipient <> d.buyer))`,
		},
		{
			Name: "O7_timeline_seq_monotonic",
			SQL: `WITH seqs AS (
                      SELECT deal_id, seq,
                             LAG(seq) OVER (PARTITION BY deal_id ORDER BY seq) AS prev
                      FROM timeline_events)
                  SELECT * FROM seqs WHERE prev IS NOT NULL AND seq <= prev`,
		},
		{
			Name: "O8_created_never_moved",
			SQL: `SELECT d.id FROM deals d
                  WHERE d.status = 'created'
                    AND EXISTS (SELECT 1 FROM ledger_entries e WHERE e.deal_id = d.id)`,
		},
		{
			Name: "O9_outbox_covers_transitions",
			SQL: `SELECT d.id FROM deals d
                  WHERE NOT EXISTS (SELECT 1 FROM outbox o
                                    WHERE o.topic = 'deal.created'
                                      AND o.payload->>'deal_id' = d.id::text)`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
