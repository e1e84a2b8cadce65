package database

const (
	// Ledger queries
	queryGetAccounts = `
		SELECT account_id, last_daily_reward
		FROM accounts
		ORDER BY account_id`

	queryGetBalances = `
		SELECT account_id, tier, amount
		FROM balances`

	queryInsertAccount = `
		INSERT INTO accounts (account_id, last_daily_reward) VALUES (?, ?)`

	queryInsertBalance = `
		INSERT INTO balances (account_id, tier, amount) VALUES (?, ?, ?)`

	// Shop queries
	queryGetShopEntries = `
		SELECT position, item_id, stock, price_tier, price_amount, purchase_limit
		FROM shop_entries
		ORDER BY position`

	queryGetShopPurchases = `
		SELECT position, account_id, units
		FROM shop_purchases`

	queryInsertShopEntry = `
		INSERT INTO shop_entries (position, item_id, stock, price_tier, price_amount, purchase_limit)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryInsertShopPurchase = `
		INSERT INTO shop_purchases (position, account_id, units) VALUES (?, ?, ?)`

	// Auction queries
	queryGetListings = `
		SELECT id, seller, item_id, stack, prefix, price_tier, price_amount,
		       listed_at, expires_at, buyer, sold
		FROM listings
		ORDER BY listed_at`

	queryInsertListing = `
		INSERT INTO listings (
			id, seller, item_id, stack, prefix, price_tier, price_amount,
			listed_at, expires_at, buyer, sold
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)
