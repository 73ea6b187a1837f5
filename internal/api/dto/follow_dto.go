package dto

// FollowRequest: payload for follow/unfollow actions
type FollowRequest struct {
	FollowingUsername string `json:"followingUsername" binding:"required"`
}

// FollowStatusResponse: whether the viewer follows the target plus the
// target's follower count
type FollowStatusResponse struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followersCount"`
}

// FollowUserResponse: display metadata for follower/following listings
type FollowUserResponse struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// FollowListResponse: list of followers or followed users
type FollowListResponse struct {
	Users []FollowUserResponse `json:"users"`
	Total int                  `json:"total"`
}
