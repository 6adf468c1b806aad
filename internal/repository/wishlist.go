package repository

import "context"

const deleteWishlistGames = `
DELETE FROM wishlists
WHERE user_id = $1 AND game_id = ANY($2::bigint[])`

type DeleteWishlistGamesParams struct {
	UserID  int64
	GameIDs []int64
}

func (q *Queries) DeleteWishlistGames(ctx context.Context, arg DeleteWishlistGamesParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteWishlistGames, arg.UserID, arg.GameIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
